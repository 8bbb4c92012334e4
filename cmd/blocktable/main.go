package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/blocktable/blocktable/pkg/config"
	"github.com/blocktable/blocktable/pkg/config/blocktableConfig"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "blocktable",
	Short: "Scan Ethereum blocks as columnar tables",
	Long:  `A tool for materializing Ethereum blocks, transactions and ERC-20 transfer events into typed columnar rows.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var configFile string
var Config *blocktableConfig.BlocktableConfig

func init() {
	cobra.OnInitialize(initConfigIfPresent)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(blocktableConfig.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().String(blocktableConfig.RpcUrl, "http://localhost:8545", "Ethereum JSON-RPC endpoint")
	rootCmd.PersistentFlags().Uint(blocktableConfig.ChainId, uint(config.ChainId_EthereumMainnet), "Chain id of the target network")
	rootCmd.PersistentFlags().Uint64(blocktableConfig.BlockNumber, 0, "Block number to scan (0 means latest)")
	rootCmd.PersistentFlags().String(blocktableConfig.TableName, "block", "Table to scan: block, transaction or erc20")

	rootCmd.AddCommand(scanCmd)

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(blocktableConfig.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func initConfigIfPresent() {
	hasConfig := false
	if configFile != "" {
		viper.SetConfigFile(configFile)
		hasConfig = true
	}

	if hasConfig {
		fmt.Printf("Using config file: %s\n", configFile)
		if err := viper.ReadInConfig(); err != nil {
			panic(err)
		}
		if err := viper.Unmarshal(&Config); err != nil {
			panic(err)
		}
	} else {
		Config = blocktableConfig.NewBlocktableConfig()
	}
}

func main() {
	Execute()
}

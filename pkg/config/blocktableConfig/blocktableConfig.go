package blocktableConfig

import (
	"encoding/json"

	"github.com/blocktable/blocktable/pkg/config"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"
)

const (
	EnvPrefix = "BLOCKTABLE_"

	Debug       = "debug"
	RpcUrl      = "rpc-url"
	ChainId     = "chain-id"
	BlockNumber = "block-number"
	TableName   = "table"
)

// BlocktableConfig represents the configuration for the block table scanner
type BlocktableConfig struct {
	Debug       bool   `json:"debug" yaml:"debug"`
	RpcUrl      string `json:"rpcUrl" yaml:"rpcUrl"`
	ChainId     uint   `json:"chainId" yaml:"chainId"`
	BlockNumber uint64 `json:"blockNumber" yaml:"blockNumber"`
	TableName   string `json:"tableName" yaml:"tableName"`
}

// Validate ensures that all required fields are set
func (bc *BlocktableConfig) Validate() error {
	var allErrors field.ErrorList

	if bc.RpcUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	}

	if !config.IsSupportedChainId(config.ChainId(bc.ChainId)) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("chainId"), bc.ChainId, "unsupported chain id"))
	}

	if _, ok := config.ParseTable(bc.TableName); !ok {
		allErrors = append(allErrors, field.Invalid(field.NewPath("tableName"), bc.TableName, "must be one of 'block', 'transaction' or 'erc20'"))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// NewBlocktableConfig creates a new BlocktableConfig with values from viper
func NewBlocktableConfig() *BlocktableConfig {
	return &BlocktableConfig{
		Debug:       viper.GetBool(config.KebabToSnakeCase(Debug)),
		RpcUrl:      viper.GetString(config.KebabToSnakeCase(RpcUrl)),
		ChainId:     viper.GetUint(config.KebabToSnakeCase(ChainId)),
		BlockNumber: viper.GetUint64(config.KebabToSnakeCase(BlockNumber)),
		TableName:   viper.GetString(config.KebabToSnakeCase(TableName)),
	}
}

// NewBlocktableConfigFromYamlBytes creates a BlocktableConfig from YAML bytes
func NewBlocktableConfigFromYamlBytes(data []byte) (*BlocktableConfig, error) {
	var bc *BlocktableConfig
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, err
	}
	return bc, nil
}

// NewBlocktableConfigFromJsonBytes creates a BlocktableConfig from JSON bytes
func NewBlocktableConfigFromJsonBytes(data []byte) (*BlocktableConfig, error) {
	var bc *BlocktableConfig
	if err := json.Unmarshal(data, &bc); err != nil {
		return nil, err
	}
	return bc, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"github.com/blocktable/blocktable/pkg/config"
	"github.com/blocktable/blocktable/pkg/logger"
	"github.com/blocktable/blocktable/pkg/recordCursor"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan one block's rows for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		initRunCmd(cmd)

		if err := Config.Validate(); err != nil {
			return err
		}

		l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: Config.Debug})
		ctx := cmd.Context()

		client := ethereum.NewEthereumClient(&ethereum.EthereumClientConfig{
			BaseUrl: Config.RpcUrl,
			ChainId: config.ChainId(Config.ChainId),
		}, l)

		blockNum := Config.BlockNumber
		if blockNum == 0 {
			latest, err := client.GetLatestBlock(ctx)
			if err != nil {
				return fmt.Errorf("failed to get latest block: %w", err)
			}
			blockNum = latest
		}

		block, err := client.GetBlockByNumber(ctx, blockNum)
		if err != nil {
			return fmt.Errorf("failed to get block %d: %w", blockNum, err)
		}

		table, _ := config.ParseTable(Config.TableName)
		columns, _ := schema.ColumnsForTable(table.String())

		names := make([]string, len(columns))
		for i, col := range columns {
			names[i] = col.Name
		}
		fmt.Println(strings.Join(names, "\t"))

		cursor := recordCursor.NewRecordCursor(columns, block, table, client, l)
		defer cursor.Close() //nolint:errcheck

		rows := 0
		for {
			ok, err := cursor.Advance(ctx)
			if err != nil {
				return fmt.Errorf("failed to advance cursor: %w", err)
			}
			if !ok {
				break
			}
			parts := make([]string, len(columns))
			for i, col := range columns {
				formatted, err := formatField(cursor, i, col)
				if err != nil {
					return fmt.Errorf("failed to read column %s: %w", col.Name, err)
				}
				parts[i] = formatted
			}
			fmt.Println(strings.Join(parts, "\t"))
			rows++
		}

		l.Sugar().Infow("Scan complete",
			"table", table.String(),
			"blockNumber", blockNum,
			"rows", rows,
		)
		return nil
	},
}

func formatField(cursor *recordCursor.RecordCursor, field int, col *schema.ColumnHandle) (string, error) {
	if cursor.IsNull(field) {
		return "NULL", nil
	}
	if col.Type.IsStructural() {
		v, err := cursor.GetObject(field)
		if err != nil {
			return "", err
		}
		defer v.Release()
		return v.String(), nil
	}
	switch col.Type.Kind {
	case schema.KindBoolean:
		v, err := cursor.GetBoolean(field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", v), nil
	case schema.KindTinyint, schema.KindSmallint, schema.KindInteger, schema.KindBigint,
		schema.KindReal, schema.KindDate, schema.KindTimestamp:
		v, err := cursor.GetLong(field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil
	case schema.KindDouble:
		v, err := cursor.GetDouble(field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", v), nil
	case schema.KindVarchar, schema.KindChar, schema.KindVarbinary:
		v, err := cursor.GetSlice(field)
		if err != nil {
			return "", err
		}
		return string(v), nil
	}
	return "", fmt.Errorf("unsupported column kind %s", col.Type.Kind)
}

func initRunCmd(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(config.KebabToSnakeCase(f.Name), f); err != nil {
			fmt.Printf("Failed to bind flag '%s' - %+v\n", f.Name, err)
		}
		if err := viper.BindEnv(f.Name); err != nil {
			fmt.Printf("Failed to bind env '%s' - %+v\n", f.Name, err)
		}
	})
}

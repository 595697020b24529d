package cmd

import (
	"liquidator/core"
	"liquidator/pkg/number"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage currency tokens and rates",
}

var setTokenCmd = &cobra.Command{
	Use:     "set-token <currency_id> <symbol> <asset_id>",
	Aliases: []string{"st"},
	Short:   "add or update the asset token of a currency",
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		token := core.Token{
			CurrencyID: cast.ToUint16(args[0]),
			Symbol:     args[1],
			AssetID:    args[2],
		}

		token.UnderlyingAssetID, _ = cmd.Flags().GetString("underlying")
		token.Decimals, _ = cmd.Flags().GetInt32("decimals")
		token.UnderlyingDecimals, _ = cmd.Flags().GetInt32("underlying-decimals")
		token.HasTransferFee, _ = cmd.Flags().GetBool("transfer-fee")

		if err := provideTokenStore(database).Save(ctx, &token); err != nil {
			cmd.PrintErrln("save token:", err)
			return
		}

		cmd.Println("token saved", token.Symbol)
	},
}

var setRateCmd = &cobra.Command{
	Use:     "set-rate <currency_id> <buffer> <haircut> <liquidation_discount>",
	Aliases: []string{"sr"},
	Short:   "add or update the risk parameters of a currency",
	Args:    cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		rateDecimals, _ := cmd.Flags().GetInt32("rate-decimals")
		rate, _ := cmd.Flags().GetString("rate")
		assetRate, _ := cmd.Flags().GetString("asset-rate")
		underlyingDecimals, _ := cmd.Flags().GetInt32("underlying-decimals")

		ethRate := core.ETHRate{
			CurrencyID:          cast.ToUint16(args[0]),
			RateDecimals:        number.Pow10(rateDecimals),
			Rate:                number.Decimal(rate),
			Buffer:              number.Decimal(args[1]),
			Haircut:             number.Decimal(args[2]),
			LiquidationDiscount: number.Decimal(args[3]),
		}

		if !ethRate.Rate.IsPositive() {
			ethRate.Rate = ethRate.RateDecimals
		}

		store := provideRateStore(database)
		if err := store.SaveETHRate(ctx, &ethRate); err != nil {
			cmd.PrintErrln("save eth rate:", err)
			return
		}

		if err := store.SaveAssetRate(ctx, &core.AssetRate{
			CurrencyID:         ethRate.CurrencyID,
			Rate:               number.Decimal(assetRate),
			UnderlyingDecimals: number.Pow10(underlyingDecimals),
		}); err != nil {
			cmd.PrintErrln("save asset rate:", err)
			return
		}

		cmd.Println("rate saved", ethRate.CurrencyID)
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(setTokenCmd, setRateCmd)

	setTokenCmd.Flags().String("underlying", "", "underlying asset id")
	setTokenCmd.Flags().Int32("decimals", 8, "token decimals")
	setTokenCmd.Flags().Int32("underlying-decimals", 8, "underlying token decimals")
	setTokenCmd.Flags().Bool("transfer-fee", false, "token charges a fee on transfer")

	setRateCmd.Flags().Int32("rate-decimals", 18, "eth rate decimals")
	setRateCmd.Flags().String("rate", "", "eth rate, defaults to parity")
	setRateCmd.Flags().String("asset-rate", "1000000000000000000", "asset to underlying rate")
	setRateCmd.Flags().Int32("underlying-decimals", 8, "underlying decimals of the asset rate")
}

package cmd

import (
	"encoding/json"

	"liquidator/core"

	"github.com/asaskevich/govalidator"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var liquidateCmd = &cobra.Command{
	Use:     "liquidate",
	Aliases: []string{"liq"},
	Short:   "quote or execute a collateral currency liquidation",
}

var liquidateQuoteCmd = &cobra.Command{
	Use:   "quote <liquidator> <account> <local_currency> <collateral_currency>",
	Short: "compute a liquidation without settling it",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := liquidationRequest(cmd, args)
		if err != nil {
			cmd.PrintErrln("invalid request:", err)
			return
		}

		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		result, err := provideLiquidationService(database).QuoteCollateral(ctx, req)
		if err != nil {
			cmd.PrintErrln("quote liquidation:", err)
			return
		}

		printResult(cmd, result)
	},
}

var liquidateExecuteCmd = &cobra.Command{
	Use:     "execute <liquidator> <account> <local_currency> <collateral_currency>",
	Aliases: []string{"exec"},
	Short:   "liquidate and settle",
	Args:    cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := liquidationRequest(cmd, args)
		if err != nil {
			cmd.PrintErrln("invalid request:", err)
			return
		}

		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		result, err := provideLiquidationService(database).LiquidateCollateral(ctx, req)
		if err != nil {
			cmd.PrintErrln("execute liquidation:", err)
			return
		}

		printResult(cmd, result)
	},
}

func liquidationRequest(cmd *cobra.Command, args []string) (*core.LiquidationRequest, error) {
	req := &core.LiquidationRequest{
		Liquidator:         args[0],
		Account:            args[1],
		LocalCurrency:      cast.ToUint16(args[2]),
		CollateralCurrency: cast.ToUint16(args[3]),
	}

	req.TraceID, _ = cmd.Flags().GetString("trace")
	req.WithdrawCollateral, _ = cmd.Flags().GetBool("withdraw")
	req.RedeemToUnderlying, _ = cmd.Flags().GetBool("redeem")

	if maxCollateral, _ := cmd.Flags().GetString("max"); maxCollateral != "" {
		v, err := decimal.NewFromString(maxCollateral)
		if err != nil {
			return nil, errors.Wrap(err, "max")
		}

		req.MaxCollateralLiquidation = v
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}

	return req, nil
}

func printResult(cmd *cobra.Command, result *core.LiquidationResult) {
	data, _ := json.MarshalIndent(result, "", "  ")
	cmd.Println(string(data))
}

func init() {
	rootCmd.AddCommand(liquidateCmd)
	liquidateCmd.AddCommand(liquidateQuoteCmd, liquidateExecuteCmd)

	for _, c := range []*cobra.Command{liquidateQuoteCmd, liquidateExecuteCmd} {
		liquidationFlags(c)
	}

	liquidateExecuteCmd.Flags().String("trace", "", "trace id, generated if empty")
}

func liquidationFlags(c *cobra.Command) {
	c.Flags().String("max", "", "max collateral asset cash to liquidate, empty means no limit")
	c.Flags().Bool("withdraw", false, "withdraw the purchased collateral")
	c.Flags().Bool("redeem", false, "redeem the withdrawn collateral to underlying")
}

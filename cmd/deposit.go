package cmd

import (
	"encoding/json"

	"liquidator/pkg/id"
	"liquidator/service/wallet"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/qrcode"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit <currency_id> <amount>",
	Short: "print a payment code to prefund a liquidator",
	Long:  "prefund the local currency before liquidating. amount is in token units",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		currencyID := cast.ToUint16(args[0])
		amount, err := decimal.NewFromString(args[1])
		if err != nil || !amount.IsPositive() {
			panic("invalid amount")
		}

		token, err := provideTokenService(database).GetAssetToken(ctx, currencyID)
		if err != nil {
			panic(err)
		}

		traceID := id.GenTraceID()
		memo, err := wallet.EncodeMemo(wallet.Memo{SettleID: traceID, CurrencyID: currencyID})
		if err != nil {
			panic(err)
		}

		dapp := provideDapp()
		input := mixin.TransferInput{
			AssetID:    token.AssetID,
			OpponentID: dapp.Client.ClientID,
			Amount:     amount,
			TraceID:    traceID,
			Memo:       memo,
		}

		payment, err := dapp.Client.VerifyPayment(ctx, input)
		if err != nil {
			panic(err)
		}

		ibs, err := json.MarshalIndent(input, "", "    ")
		if err != nil {
			panic(err)
		}

		cmd.Println(string(ibs))

		url := mixin.URL.Codes(payment.CodeID)
		cmd.Println(url)
		qrcode.Fprint(cmd.OutOrStdout(), url)
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)
}

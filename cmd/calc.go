package cmd

import (
	"encoding/json"
	"fmt"

	"leverage/core"
	"leverage/pkg/fixed"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var leverageCmd = &cobra.Command{
	Use:     "leverage",
	Aliases: []string{"lev"},
	Short:   "show equity and leverage of a position",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		leverageSrv := provideLeverageService(provideMarketDataService())

		position, err := resolvePosition(cmd, leverageSrv)
		if err != nil {
			return err
		}

		state, err := leverageSrv.Leverage(ctx, position)
		if err != nil {
			return err
		}

		return printJSON(cmd, state)
	},
}

var unloopCmd = &cobra.Command{
	Use:   "unloop",
	Short: "repay, withdraw and swap amounts to lower leverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		leverageSrv := provideLeverageService(provideMarketDataService())

		position, err := resolvePosition(cmd, leverageSrv)
		if err != nil {
			return err
		}

		target, err := decimalFlag(cmd.Flags(), "target")
		if err != nil {
			return err
		}

		params, err := leverageSrv.Unloop(ctx, position, target)
		if err != nil {
			return err
		}

		return printJSON(cmd, params)
	},
}

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "borrow and swap amounts to raise leverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		marketSrv := provideMarketDataService()
		leverageSrv := provideLeverageService(marketSrv)

		position, err := resolvePosition(cmd, leverageSrv)
		if err != nil {
			return err
		}

		var maxLeverage decimal.Decimal
		switch v, _ := cmd.Flags().GetString("max-leverage"); {
		case v != "":
			maxLeverage, err = decimalFlag(cmd.Flags(), "max-leverage")
		case marketSrv == nil:
			return fmt.Errorf("--max-leverage or market_data.end_point is required")
		default:
			maxLeverage, err = marketSrv.MaxLeverage(ctx, position.CollateralToken, position.DebtToken)
		}

		if err != nil {
			return err
		}

		var deposit *fixed.Amount
		if v, _ := cmd.Flags().GetString("deposit"); v != "" {
			d, err := fixed.ParseAmount(v, position.Collateral.Decimals())
			if err != nil {
				return fmt.Errorf("deposit: %v: %w", err, core.ErrInvalidAmount)
			}
			deposit = &d
		}

		target, err := decimalFlag(cmd.Flags(), "target")
		if err != nil {
			return err
		}

		params, err := leverageSrv.Loop(ctx, position, target, maxLeverage, deposit)
		if err != nil {
			return err
		}

		return printJSON(cmd, params)
	},
}

var earningsCmd = &cobra.Command{
	Use:   "earnings <supplied> <supply_apy> <borrowed> <borrow_apy> <months>",
	Short: "simple interest projection, amounts in usd and apy in percent",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		months, err := cast.ToInt64E(args[4])
		if err != nil {
			return fmt.Errorf("months %q: %w", args[4], core.ErrInvalidAmount)
		}

		input := &core.EarningsInput{DurationMonths: months}
		for idx, dst := range []*decimal.Decimal{&input.Supplied, &input.SupplyAPY, &input.Borrowed, &input.BorrowAPY} {
			if *dst, err = decimal.NewFromString(args[idx]); err != nil {
				return fmt.Errorf("%q: %w", args[idx], core.ErrInvalidAmount)
			}
		}

		earnings, err := provideLeverageService(nil).Earnings(cmd.Context(), input)
		if err != nil {
			return err
		}

		return printJSON(cmd, earnings)
	},
}

// decimalFlag parses a decimal string flag, malformed input is an error rather than zero
func decimalFlag(flags *pflag.FlagSet, name string) (decimal.Decimal, error) {
	v, err := flags.GetString(name)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s %q: %w", name, v, core.ErrInvalidAmount)
	}

	return d, nil
}

func positionFlags(flags *pflag.FlagSet) {
	for _, side := range []string{"collateral", "debt"} {
		flags.String(side+"-token", "", side+" token address")
		flags.String(side, "0", side+" amount, integer at native decimals")
		flags.Int(side+"-decimals", -1, side+" token decimals, resolved from market data when unset")
		flags.String(side+"-price", "", side+" usd price, resolved from market data when unset")
	}
}

func positionRequest(flags *pflag.FlagSet) (*core.PositionRequest, error) {
	balance := func(side string) (core.Balance, error) {
		address, _ := flags.GetString(side + "-token")
		amount, _ := flags.GetString(side)
		decimals, _ := flags.GetInt(side + "-decimals")
		price, _ := flags.GetString(side + "-price")

		b := core.Balance{
			Token:  core.Token{Address: common.HexToAddress(address)},
			Amount: amount,
		}

		if decimals >= 0 && decimals <= 255 {
			d := uint8(decimals)
			b.Token.Decimals = &d
		}

		if price != "" {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return b, fmt.Errorf("%s price %q: %w", side, price, core.ErrInvalidPrice)
			}
			b.Token.Price = decimal.NewNullDecimal(p)
		}

		return b, nil
	}

	collateral, err := balance("collateral")
	if err != nil {
		return nil, err
	}

	debt, err := balance("debt")
	if err != nil {
		return nil, err
	}

	return &core.PositionRequest{Collateral: collateral, Debt: debt}, nil
}

func resolvePosition(cmd *cobra.Command, leverageSrv core.ILeverageService) (*core.Position, error) {
	req, err := positionRequest(cmd.Flags())
	if err != nil {
		return nil, err
	}

	return leverageSrv.Position(cmd.Context(), req)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(data))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{leverageCmd, unloopCmd, loopCmd} {
		positionFlags(c.Flags())
		rootCmd.AddCommand(c)
	}

	unloopCmd.Flags().String("target", "1", "desired leverage")
	loopCmd.Flags().String("target", "2", "desired leverage")
	loopCmd.Flags().String("max-leverage", "", "market bound, fetched from market data when unset")
	loopCmd.Flags().String("deposit", "", "collateral supplied before looping, integer at native decimals")

	rootCmd.AddCommand(earningsCmd)
}

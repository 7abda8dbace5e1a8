package cli

import (
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/cascadefi/cascade/x/amm/types"
)

const (
	flagDeadline      = "deadline"
	flagRecipient     = "recipient"
	flagFeeOnTransfer = "fee-on-transfer"
)

// GetTxCmd returns the transaction commands for the amm module
func GetTxCmd() *cobra.Command {
	ammTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "AMM transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammTxCmd.AddCommand(
		CmdCreatePool(),
		CmdAddLiquidity(),
		CmdRemoveLiquidity(),
		CmdSwapExactIn(),
		CmdSwapExactOut(),
	)

	return ammTxCmd
}

// CmdCreatePool returns a CLI command handler for registering a pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [token-a] [token-b]",
		Short: "Create a new liquidity pool for a token pair",
		Long: `Create an empty liquidity pool for a token pair. Fund it afterwards
with add-liquidity; the first deposit sets the price.

Example:
  $ cascaded tx amm create-pool uatom uusdc --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if args[0] == args[1] {
				return fmt.Errorf("tokens must be different")
			}

			msg := &types.MsgCreatePool{
				Creator: clientCtx.GetFromAddress().String(),
				TokenA:  args[0],
				TokenB:  args[1],
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAddLiquidity returns a CLI command handler for depositing into a pool
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [pool-id] [amount-a-desired] [amount-b-desired] [amount-a-min] [amount-b-min]",
		Short: "Add liquidity to an existing pool",
		Long: `Deposit both tokens into a pool. The pool takes the amounts at its
current ratio, up to the desired amounts and never below the minimums;
anything unused stays in your account.

Example:
  $ cascaded tx amm add-liquidity 1 1000000 2000000 990000 1980000 --from mykey
  $ cascaded tx amm add-liquidity 1 1000000 2000000 990000 1980000 --deadline 1700000300 --from mykey`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			amounts := make([]math.Int, 4)
			for i, arg := range args[1:] {
				amount, ok := math.NewIntFromString(arg)
				if !ok {
					return fmt.Errorf("invalid amount: %s (must be integer)", arg)
				}
				amounts[i] = amount
			}

			deadline, err := cmd.Flags().GetInt64(flagDeadline)
			if err != nil {
				return err
			}

			msg := &types.MsgAddLiquidity{
				Provider:       clientCtx.GetFromAddress().String(),
				PoolId:         poolID,
				AmountADesired: amounts[0],
				AmountBDesired: amounts[1],
				AmountAMin:     amounts[2],
				AmountBMin:     amounts[3],
				Deadline:       deadline,
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(flagDeadline, 0, "Unix time after which the deposit fails (0 = no limit)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRemoveLiquidity returns a CLI command handler for withdrawing from a pool
func CmdRemoveLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [pool-id] [shares] [amount-a-min] [amount-b-min]",
		Short: "Remove liquidity from a pool",
		Long: `Burn liquidity shares and withdraw both tokens pro rata. The minimums
protect against the ratio moving before the transaction lands.

Example:
  $ cascaded tx amm remove-liquidity 1 1000000 495000 990000 --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			amounts := make([]math.Int, 3)
			for i, arg := range args[1:] {
				amount, ok := math.NewIntFromString(arg)
				if !ok {
					return fmt.Errorf("invalid amount: %s (must be integer)", arg)
				}
				amounts[i] = amount
			}

			deadline, err := cmd.Flags().GetInt64(flagDeadline)
			if err != nil {
				return err
			}

			msg := &types.MsgRemoveLiquidity{
				Provider:   clientCtx.GetFromAddress().String(),
				PoolId:     poolID,
				Shares:     amounts[0],
				AmountAMin: amounts[1],
				AmountBMin: amounts[2],
				Deadline:   deadline,
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(flagDeadline, 0, "Unix time after which the withdrawal fails (0 = no limit)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactIn returns a CLI command handler for fixed-input swaps
func CmdSwapExactIn() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-in [path] [amount-in] [min-amount-out]",
		Short: "Swap a fixed input along a route",
		Long: `Trade a fixed amount of the first denom in path for as much of the
last denom as the route gives, bounded below by min-amount-out. The
path is a comma-separated denom list; every adjacent pair must have a
pool.

Examples:
  $ cascaded tx amm swap-exact-in uatom,uusdc 1000000 1900000 --from mykey
  $ cascaded tx amm swap-exact-in uatom,uusdc,uosmo 1000000 900000 --from mykey
  $ cascaded tx amm swap-exact-in ufee,uusdc 1000000 0 --fee-on-transfer --from mykey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			path := strings.Split(args[0], ",")

			amountIn, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount-in: %s (must be integer)", args[1])
			}
			amountOutMin, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid min-amount-out: %s (must be integer)", args[2])
			}

			deadline, err := cmd.Flags().GetInt64(flagDeadline)
			if err != nil {
				return err
			}
			recipient, err := cmd.Flags().GetString(flagRecipient)
			if err != nil {
				return err
			}
			feeOnTransfer, err := cmd.Flags().GetBool(flagFeeOnTransfer)
			if err != nil {
				return err
			}

			msg := &types.MsgSwapExactIn{
				Trader:        clientCtx.GetFromAddress().String(),
				Path:          path,
				AmountIn:      amountIn,
				AmountOutMin:  amountOutMin,
				Recipient:     recipient,
				Deadline:      deadline,
				FeeOnTransfer: feeOnTransfer,
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(flagDeadline, 0, "Unix time after which the swap fails (0 = no limit)")
	cmd.Flags().String(flagRecipient, "", "Deliver the output to this address instead of the trader")
	cmd.Flags().Bool(flagFeeOnTransfer, false, "Price each hop on realized balances, for denoms that take a transfer cut")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactOut returns a CLI command handler for fixed-output swaps
func CmdSwapExactOut() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-out [path] [amount-out] [max-amount-in]",
		Short: "Swap for a fixed output along a route",
		Long: `Trade at most max-amount-in of the first denom in path for exactly
amount-out of the last denom.

Example:
  $ cascaded tx amm swap-exact-out uatom,uusdc 2000000 1100000 --from mykey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			path := strings.Split(args[0], ",")

			amountOut, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount-out: %s (must be integer)", args[1])
			}
			amountInMax, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid max-amount-in: %s (must be integer)", args[2])
			}

			deadline, err := cmd.Flags().GetInt64(flagDeadline)
			if err != nil {
				return err
			}
			recipient, err := cmd.Flags().GetString(flagRecipient)
			if err != nil {
				return err
			}

			msg := &types.MsgSwapExactOut{
				Trader:      clientCtx.GetFromAddress().String(),
				Path:        path,
				AmountOut:   amountOut,
				AmountInMax: amountInMax,
				Recipient:   recipient,
				Deadline:    deadline,
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(flagDeadline, 0, "Unix time after which the swap fails (0 = no limit)")
	cmd.Flags().String(flagRecipient, "", "Deliver the output to this address instead of the trader")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

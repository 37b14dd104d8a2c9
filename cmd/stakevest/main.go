// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/meterio/stakevest/api"
	"github.com/meterio/stakevest/auth"
	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/staking"
	"github.com/meterio/stakevest/state"
	"github.com/meterio/stakevest/token"
	"github.com/meterio/stakevest/vault"
	"github.com/meterio/stakevest/vesting"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".stakevest")
	}
	return ""
}

func initLogger(verbosity int) {
	level := slog.LevelInfo
	if verbosity > 0 {
		level = slog.LevelDebug
	}
	w := os.Stderr
	var handler slog.Handler
	if isatty.IsTerminal(w.Fd()) {
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.TimeOnly})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakevest",
		Usage:     "Node of the staking/vesting token ledgers",
		Copyright: "2020 The Meter.io developers",
		Flags: []cli.Flag{
			dataDirFlag,
			memFlag,
			adminFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))

	admin, err := vault.ParseAddress(ctx.String(adminFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "admin")
	}

	var st *state.State
	if ctx.Bool(memFlag.Name) {
		st = state.NewMem()
	} else {
		st, err = state.New(filepath.Join(ctx.String(dataDirFlag.Name), "ledger.db"))
		if err != nil {
			return errors.Wrap(err, "open state")
		}
	}
	defer st.Close()

	ledger := token.NewMemLedger()
	genesis, ok := new(big.Int).SetString(ctx.String(genesisFlag.Name), 10)
	if !ok {
		return errors.New("invalid genesis amount")
	}
	if genesis.Sign() > 0 {
		ledger.Mint(admin, genesis)
	}

	authority := auth.NewAdmin(admin)
	stakingLedger := staking.NewStaking(st, ledger, authority, staking.StakingLedgerAddr)
	vestingLedger := vesting.NewVesting(st, ledger, authority, vesting.VestingLedgerAddr)

	if err := bindBridge(admin, stakingLedger, vestingLedger); err != nil {
		return errors.Wrap(err, "bind bridge")
	}

	handler := api.New(stakingLedger, vestingLedger, ctx.String(apiCorsFlag.Name))
	addr := ctx.String(apiAddrFlag.Name)
	slog.Info("starting API server", "addr", addr, "version", fullVersion())
	return http.ListenAndServe(addr, http.HandlerFunc(handler))
}

// bindBridge wires the two ledgers together, tolerating a state that was
// already bound in a previous run.
func bindBridge(admin vault.Address, stakingLedger *staking.Staking, vestingLedger *vesting.Vesting) error {
	now := uint64(time.Now().Unix())
	e := env.New(admin, now)

	err := stakingLedger.SetVestingContract(e, vestingLedger.Address())
	if err != nil && err != staking.ErrContractAlreadySet {
		return err
	}
	err = vestingLedger.SetStakingContract(e, stakingLedger)
	if err == vesting.ErrContractAlreadySet {
		return vestingLedger.RestoreStakingContract(stakingLedger)
	}
	return err
}

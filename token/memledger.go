// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"log/slog"
	"math/big"

	"github.com/meterio/stakevest/vault"
)

type allowanceKey struct {
	owner   vault.Address
	spender vault.Address
}

// MemLedger is an in-memory token ledger. It backs the engines in tests and in
// single-process deployments; production setups swap in a real token collaborator.
type MemLedger struct {
	balances   map[vault.Address]*big.Int
	allowances map[allowanceKey]*big.Int
	logger     *slog.Logger
}

func NewMemLedger() *MemLedger {
	return &MemLedger{
		balances:   make(map[vault.Address]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
		logger:     slog.Default().With("pkg", "token"),
	}
}

// Mint credits amount to addr out of thin air.
func (l *MemLedger) Mint(addr vault.Address, amount *big.Int) {
	l.balances[addr] = new(big.Int).Add(l.BalanceOf(addr), amount)
}

func (l *MemLedger) BalanceOf(addr vault.Address) *big.Int {
	if bal, ok := l.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

func (l *MemLedger) Transfer(from, to vault.Address, amount *big.Int) bool {
	if amount.Sign() < 0 {
		return false
	}
	bal := l.BalanceOf(from)
	if bal.Cmp(amount) < 0 {
		l.logger.Warn("transfer failed, not enough balance", "from", from, "amount", amount)
		return false
	}
	l.balances[from] = bal.Sub(bal, amount)
	l.balances[to] = new(big.Int).Add(l.BalanceOf(to), amount)
	return true
}

func (l *MemLedger) TransferFrom(spender, from, to vault.Address, amount *big.Int) bool {
	if amount.Sign() < 0 {
		return false
	}
	allowed := l.Allowance(from, spender)
	if allowed.Cmp(amount) < 0 {
		l.logger.Warn("transferFrom failed, not enough allowance", "owner", from, "spender", spender, "amount", amount)
		return false
	}
	if !l.Transfer(from, to, amount) {
		return false
	}
	l.allowances[allowanceKey{from, spender}] = allowed.Sub(allowed, amount)
	return true
}

func (l *MemLedger) Approve(owner, spender vault.Address, amount *big.Int) bool {
	if amount.Sign() < 0 {
		return false
	}
	l.allowances[allowanceKey{owner, spender}] = new(big.Int).Set(amount)
	return true
}

func (l *MemLedger) Allowance(owner, spender vault.Address) *big.Int {
	if allowed, ok := l.allowances[allowanceKey{owner, spender}]; ok {
		return new(big.Int).Set(allowed)
	}
	return new(big.Int)
}

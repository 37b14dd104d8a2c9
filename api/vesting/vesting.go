// Copyright (c) 2020 The Meter.io developers
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying

// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/meterio/stakevest/api/utils"
	"github.com/meterio/stakevest/vault"
	"github.com/meterio/stakevest/vesting"
)

type Vesting struct {
	ledger *vesting.Vesting
}

func New(ledger *vesting.Vesting) *Vesting {
	return &Vesting{ledger: ledger}
}

func (vt *Vesting) handleGetLocks(w http.ResponseWriter, req *http.Request) error {
	addr, err := vault.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return utils.WriteJSON(w, convertVests(vt.ledger.VestsOf(addr)))
}

func (vt *Vesting) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := vault.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	now := uint64(time.Now().Unix())
	return utils.WriteJSON(w, &Balance{
		Balance:   vt.ledger.BalanceOf(addr).String(),
		Claimable: vt.ledger.ClaimableOf(addr, now).String(),
	})
}

func (vt *Vesting) handleGetTotal(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, &Total{VestedTotal: vt.ledger.VestedTotal().String()})
}

func (vt *Vesting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/locks/{address}").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(vt.handleGetLocks))
	sub.Path("/balance/{address}").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(vt.handleGetBalance))
	sub.Path("/total").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(vt.handleGetTotal))
}

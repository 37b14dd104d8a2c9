// Copyright (c) 2020 The Meter.io developers
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying

// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/meterio/stakevest/api/utils"
	"github.com/meterio/stakevest/staking"
	"github.com/meterio/stakevest/vault"
)

type Staking struct {
	ledger *staking.Staking
}

func New(ledger *staking.Staking) *Staking {
	return &Staking{ledger: ledger}
}

func (st *Staking) handleGetPoolList(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, convertPoolList(st.ledger.Pools()))
}

func (st *Staking) handleGetPoolByHash(w http.ResponseWriter, req *http.Request) error {
	hash, err := vault.ParseBytes32(mux.Vars(req)["hash"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "hash"))
	}
	for _, p := range st.ledger.Pools() {
		if p.PoolHash == hash {
			return utils.WriteJSON(w, convertPool(p))
		}
	}
	return utils.HTTPError(errors.New("pool not found"), http.StatusNotFound)
}

func (st *Staking) handleGetPositions(w http.ResponseWriter, req *http.Request) error {
	addr, err := vault.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return utils.WriteJSON(w, convertPositions(st.ledger.PositionsOf(addr)))
}

func (st *Staking) handleGetTotals(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, &Totals{
		PoolCount:            st.ledger.PoolCount(),
		TotalStakedAndReward: st.ledger.TotalStakedAndReward().String(),
		TotalFreeRewards:     st.ledger.TotalFreeRewards().String(),
	})
}

func (st *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/pools").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(st.handleGetPoolList))
	sub.Path("/pools/{hash}").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(st.handleGetPoolByHash))
	sub.Path("/positions/{address}").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(st.handleGetPositions))
	sub.Path("/totals").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(st.handleGetTotals))
}

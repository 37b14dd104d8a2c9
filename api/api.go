// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	stakingapi "github.com/meterio/stakevest/api/staking"
	vestingapi "github.com/meterio/stakevest/api/vesting"
	"github.com/meterio/stakevest/staking"
	"github.com/meterio/stakevest/vesting"
)

// New return api router
func New(stakingLedger *staking.Staking, vestingLedger *vesting.Vesting, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	stakingapi.New(stakingLedger).
		Mount(router, "/staking")
	vestingapi.New(vestingLedger).
		Mount(router, "/vesting")
	router.Path("/metrics").Handler(promhttp.Handler())

	handler := handlers.CombinedLoggingHandler(os.Stdout, router)
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(handler).ServeHTTP
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package services provides suture.Service wrappers for the recommendation
server's long-running components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe into the Serve pattern
  - Configurable shutdown timeout for draining in-flight requests

Recommendation Service (RecommendService):
  - Runs the recommend engine's background sweep, expiring stale
    pending sessions; it does not persist engine state
  - Runs on a configurable interval, tied to the session TTL

# Usage Example

	import (
	    "net/http"
	    "time"

	    "github.com/tomtom215/cartographus/internal/supervisor"
	    "github.com/tomtom215/cartographus/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, engine *recommend.Engine) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    httpSvc := services.NewHTTPServerService(server, 10*time.Second)
	    tree.AddAPIService(httpSvc)

	    recSvc := services.NewRecommendService(engine, services.RecommendServiceConfig{
	        SweepInterval: 15 * time.Minute,
	    }, zlog)
	    tree.AddMessagingService(recSvc)

	    tree.Serve(ctx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

# Service Identification

Services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

# Thread Safety

Both service wrappers are safe for concurrent use; multiple concurrent
Serve calls on the same instance are not supported.

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: underlying supervision library
  - internal/recommend: the engine RecommendService sweeps
*/
package services

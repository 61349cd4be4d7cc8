// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package supervisor provides process supervision for Marvin using suture v4.

Services are organized into two layers:

	RootSupervisor ("marvin")
	├── DataSupervisor ("data-layer")
	│   ├── cube-cache-cleanup
	│   ├── spectrum-cache-gc (when the spectrum cache is enabled)
	│   └── duckdb-checkpoint
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services are restarted with backoff once FailureThreshold is
exceeded. Supervisor events are logged through sutureslog, which writes to
the zerolog logger via logging.NewSlogHandler.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor

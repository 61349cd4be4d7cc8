// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import "github.com/go-chi/chi/v5"

// View is one API resource. Register mounts its routes on the API router.
type View interface {
	Name() string
	Register(r chi.Router)
}

// Views returns the API resources in registration order.
func (h *Handler) Views() []View {
	return []View{
		&CubeView{h: h},
		&PlateView{h: h},
		&SpaxelView{h: h},
		&GeneralView{h: h},
	}
}

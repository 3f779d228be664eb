// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. It is used for
// configuration sections (see config.Validate) and for HTTP request
// parameters, where failures are converted to the VALIDATION_ERROR response
// shape with ToAPIError.
//
//	type panelRequest struct {
//	    ID string `validate:"required,panelid"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Custom tags:
//
//	panelid  lowercase kebab-case identifier ("pickup-hour")
package validation

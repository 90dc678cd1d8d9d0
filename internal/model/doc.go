// Package model defines domain entities, validated value objects, and the
// API error type for PlanIt.
//
// # Value Objects
//
// Raw request fields are validated into constrained domain values by pure
// functions returning the canonical value plus an optional FieldError:
//
//	title, fe := model.ValidateTitle(req.Title)
//	if fe != nil { ... }
//
// Request structs compose these validators in a Validate method that runs
// every field validator unconditionally and returns all failures together
// (collect-all, never fail-fast):
//
//	input, errs := req.Validate(catalog)
//	if len(errs) > 0 {
//	    return model.NewValidationError(errs)
//	}
//
// # Category Catalog
//
// Category and Subcategory validation depends on a static category to
// subcategory-list mapping bundled with the binary. The catalog is decoded
// once at startup (LoadCategoryCatalog) and injected where needed; it is
// immutable for the lifetime of the process.
//
// # Errors
//
// All API errors are flat Error values carrying an HTTP status and a
// human-readable message, rendered as {"error": <message>}. Validation and
// business-rule violations use 400, missing resources 404, unexpected
// persistence failures 500.
package model

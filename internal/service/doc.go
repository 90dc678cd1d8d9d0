// Package service implements PlanIt's business rules on top of repository
// interfaces defined in this package.
//
// Services are constructed with config structs holding their repository
// dependencies, keeping them testable with in-memory mocks:
//
//	svc := service.NewEventService(service.EventServiceConfig{
//	    EventRepo: eventRepo,
//	    Catalog:   catalog,
//	})
//
// All expected failures are sentinel errors from errors.go; handlers map
// them to HTTP responses with handler.MapServiceError. Unexpected repository
// errors are wrapped with fmt.Errorf("%w") and surface as 500s.
package service

package services

// ServiceContainer aggregates the service facades handed to the HTTP
// layer, so route registration depends on interfaces only.
type ServiceContainer struct {
	Store  StoreSvcFacade
	Report ReportSvcFacade
}

package services

import (
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(gateway portsrepo.Gateway, storeOptions ...StoreOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The store owns all collections; everything else reads its snapshots
	container.Store = NewStoreService(gateway, storeOptions...)
	container.Report = NewReportService()

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.StoreSvcFacade  = (*storeService)(nil)
	_ portssvc.ReportSvcFacade = (*reportService)(nil)
)

package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	User        UserSvcFacade
	Authz       AuthzSvcFacade
	CashAdvance CashAdvanceSvcFacade
	Liquidation LiquidationSvcFacade
}

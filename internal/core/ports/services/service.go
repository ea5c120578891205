package services

// ServiceProvider holds all service facades needed by the HTTP layer.
type ServiceProvider struct {
	UserSvc        UserSvcFacade
	CategorySvc    CategorySvcFacade
	BeneficiarySvc BeneficiarySvcFacade
	ClientSvc      ClientSvcFacade
	FinancialSvc   FinancialSvcFacade
	LedgerSvc      LedgerSvcFacade
}

package handler

// Endpoints groups the routes mounted by both deployment shapes.
type Endpoints struct {
	Users            Endpoint
	AnalyticsSummary Endpoint
	PortalSession    Endpoint
}

func NewEndpoints(users *UserHandler, analytics *AnalyticsHandler, portal *PortalHandler) Endpoints {
	return Endpoints{
		Users:            users.Lookup,
		AnalyticsSummary: analytics.Summary,
		PortalSession:    portal.Create,
	}
}

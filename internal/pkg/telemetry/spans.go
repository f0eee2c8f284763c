package telemetry

// Span names used for tracing.
const (
	SpanStationSearch  = "stations.search"
	SpanStationNearby  = "stations.nearby"
	SpanRoutePlan      = "route.plan"
	SpanRouteCompute   = "route.compute"
	SpanOriginResolve  = "route.origin"
	SpanSDKLoad        = "map.sdk_load"
	SpanInquirySubmit  = "intake.submit"
	SpanInquiryProcess = "intake.process"
)

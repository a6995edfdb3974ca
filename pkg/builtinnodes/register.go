package builtinnodes

import "github.com/rtpro256/workflow-engine-core/pkg/noderegistry"

// RegisterAll binds every built-in node type into r. The package's init
// calls it once against noderegistry.Default, so importing the package (as
// cmd/server does) is enough; tests that want an isolated registry call it
// against their own noderegistry.New().
func RegisterAll(r *noderegistry.Registry) {
	r.Register("data_source", dataSourceSchema(), newDataSource)
	r.Register("identity", identitySchema(), newIdentity)
	r.Register("condition", conditionSchema(), newCondition)
	r.Register("switch", switchSchema(), newSwitch)
	r.Register("filter", filterSchema(), newFilter)
	r.Register("http_request", httpRequestSchema(), newHTTPRequest)
	r.Register("json_reformat", jsonReformatSchema(), newJSONReformat)
	r.Register("chart_render", chartRenderSchema(), newChartRender)
	r.Register("tool_invoke", toolInvokeSchema(), newToolInvoke)
}

func init() {
	RegisterAll(noderegistry.Default)
}

// Package bootstrap sequences an application's asynchronous initialization
// steps: connect to storage, warm caches, start the transport — each modeled
// as a named Unit with declared predecessors.
//
// # Lifecycle
//
//	units := []*bootstrap.Unit{
//	    {Name: "config.load", Run: loadConfig},
//	    {Name: "database.connect", DependsOn: []string{"config.load"}, Run: connectDB},
//	    {Name: "http.serve", DependsOn: []string{"database.connect"}, Run: serve},
//	}
//
//	plan, err := bootstrap.ComputePlan(units)   // topological sort, no execution
//	if err != nil {
//	    return err                              // unresolved or cyclic graph
//	}
//	orch := bootstrap.NewOrchestrator(logger)
//	if err := orch.Run(ctx, plan, c); err != nil {
//	    var bf *bootstrap.BootstrapFailure
//	    errors.As(err, &bf)                     // bf.Unit, bf.Cause, bf.Succeeded
//	    return err                              // fail fast — never serve half-booted
//	}
//
// Units run strictly one at a time in plan order, so a unit may rely on
// everything its predecessors bound into the container. On failure the
// orchestrator stops scheduling and reports which units had already
// succeeded; releasing their resources is the embedding process's call,
// since release semantics are unit-specific.
//
// Convention: "start accepting connections" is the last unit in the plan,
// depending on all others. An application must refuse to serve traffic when
// bootstrap fails — a partially initialized container is never "ready".
package bootstrap

// Package schema checks node parameters against the types a node expects.
//
// Types follow the coercion rules nodes apply at tick time (see the To*
// helpers in pkg/domain), so a parameter the schema accepts is one the node
// can read. Schemas are usually inferred from the defaults a node type
// registers:
//
//	s := schema.Infer(map[string]any{"seconds": 1.0, "label": ""})
//	if err := schema.CheckParams(s, spec.Params); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        log.Println(e)
//	    }
//	}
//
// Values of the form "$key" are blackboard references. They are resolved
// when the tree ticks and are never type checked here.
package schema

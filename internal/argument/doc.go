// Package argument binds candidate argument strings onto the fields
// of a settings struct, through a pipeline of prioritized [Hook]s.
//
// A population pass runs these stages in order:
//
//	BeforeParse              - may rewrite the raw argument tokens (see [Engine.Bind]).
//	BeforePopulateProperties - class-scoped hooks, once per pass.
//	BeforePopulateProperty   - per property; may supply an absent candidate value.
//	                           (the candidate is then revived and assigned)
//	AfterPopulateProperty    - per property; observes the final candidate and revived value.
//	AfterPopulateProperties  - class-scoped hooks, once per pass.
//
// Within a stage, hooks with a higher [Hook.Priority] run first.
// Hooks with equal priority run in the order they were declared;
// class-scoped hooks are declared before property-scoped ones.
// [PriorityHigh] and [PriorityNormal] are the values used by the hooks
// within this module, so that third-party hooks may order themselves around them.
// E.g. a remembered value (PriorityHigh) is offered before a static default (PriorityNormal).
package argument

// Package dispatcher routes actions to handlers and coordinates execution.
//
// An action named "align.match" goes to the handler registered for the
// "align" namespace, provided the handler accepts that action name.
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built from the current document, rule source,
//     status sink and logger
//  2. Pre-dispatch hooks run and may cancel the action
//  3. The handler runs, with panic recovery unless disabled
//  4. Post-dispatch hooks run
//  5. The outcome and duration are recorded, if metrics are enabled
//
// DryRun dispatches with ExecutionContext.DryRun set so that handlers
// report what they would change without editing the document.
package dispatcher

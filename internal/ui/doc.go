// Package ui contains the Bubble Tea program that presents a catalog as a
// board of pages. The Model type focuses on message orchestration, while
// dedicated helpers own navigation, input, rendering, and reloads.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards key presses to the new-entry form while it is open.
//     Otherwise the message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function.
//   - Board operations (move, sort, remove, insert, swap, clear) run through
//     the command bus, which traces them and reports the outcome as a
//     command.Result message.
//   - Every update ends by flushing the board's queue, so scheduled page
//     transitions and collection listeners settle before View runs.
//
// State ownership:
//   - Board holds the pages in a uicollection.Stack; only the active page is
//     attached to the board body, the rest wait in the stash.
//   - Each Page mirrors its entries into a list element through a
//     uicollection.UICollection. View reads rows straight from that element,
//     so what is drawn is what the collection attached.
//   - Query, viewport and swap marks per page come from internal/ui/state.
//
// Backend interactions:
//   - A backend.Watcher polls the catalog file; Update waits for its events
//     and hands them to the dispatcher, which reconciles the board in place.
package ui

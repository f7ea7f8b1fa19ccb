// Package terminal provides the draw target and input source for the client.
//
// Features:
//   - tcell screen backend with true color and 256-color palette output
//   - Row-major cell flush: cells[y*width + x]
//   - Key, resize and focus events translated to a small Event type
//   - Clean terminal restoration on exit/panic
package terminal

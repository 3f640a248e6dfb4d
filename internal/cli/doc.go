// Package cli provides the interactive sqrity shell.
//
// The shell registers and logs in users through services.AuthService, generates
// candidate secrets with the generator package, and saves or lists them
// through services.VaultService under the logged-in username.
//
// Commands:
//   - register, login, logout
//   - generate [length] [-no-upper] [-no-lower] [-no-digits] [-no-symbols]
//   - show        : print the last generated secret
//   - save [app]  : store the last generated secret for app
//   - list        : print every stored secret of the current user
//   - help, exit | quit
//
// The shell is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli

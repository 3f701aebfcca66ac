// Package provision bootstraps development environments on Arch Linux
// (WSL), Fedora containers, and Debian/Ubuntu. It detects the running
// distribution, drives the native package manager through an injectable
// command runner, and applies idempotent configuration file edits (locale,
// timezone, mirrors, sudoers).
package provision

// Package dbus reads desktop appearance settings from the
// org.freedesktop.portal.Settings D-Bus interface.
package dbus

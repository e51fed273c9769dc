// Package etest contains helpers shared across eddy's tests.
package etest

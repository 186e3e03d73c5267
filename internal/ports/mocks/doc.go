// Package mocks holds mockery-generated test doubles for the ports package.
package mocks

// Package mock provides controllable test doubles for a11ybridge components:
// a clock for event timestamps, a settings reader whose enabled-services
// value can be changed between reads, and a fixed-result service scanner.
package mock

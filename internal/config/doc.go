// Package config loads a11ybridge configuration from a YAML file.
//
// The configuration directory defaults to ~/.config/a11ybridge and must
// contain config.yaml. A missing file is not an error: defaults are used.
//
//	packageName: com.example.testaccessibility
//	serviceClassName: com.example.testaccessibility.TrackerService
//	detectedServices:
//	  - com.example.testaccessibility.TrackerService
//	settings:
//	  source: adb
//	  serial: emulator-5554
//	  timeout: 5s
//	logLevel: debug
package config

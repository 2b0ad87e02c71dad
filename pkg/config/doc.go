// Package config loads multiwatch settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Defaults (Default)
//  2. An optional YAML file (LoadFile)
//  3. MULTIWATCH_* environment variables (ApplyEnv)
//
// Commands then apply their own flags on top and call Validate.
//
// Example file:
//
//	state:
//	  backend: sqlite
//	  path: /var/lib/multiwatch/state.db
//	ui:
//	  frame_interval: 50ms
//	log:
//	  level: debug
//	  trace: /tmp/multiwatch.swlog
//	web:
//	  addr: ":8080"
//	  advertise: true
package config

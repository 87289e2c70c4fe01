// Package config loads viridian.yaml.
//
// # Configuration File Structure
//
//	scheduler:
//	  frameInterval: 16ms
//	  slice: 12ms
//	  yieldThreshold: 1ms
//	hooks:
//	  strict: true
//	log:
//	  level: info
//	  format: text
//	server:
//	  addr: localhost:3000
//	  metrics: true
//
// Every field is optional; missing fields take the defaults above.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Slice:", cfg.Scheduler.Slice.Std())
package config

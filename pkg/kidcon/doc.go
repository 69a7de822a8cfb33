// Package kidcon provides an embeddable API for capturing kid-control
// device counters from a Mikrotik appliance.
//
// Quick start:
//
//	k, err := kidcon.New(
//	    kidcon.WithDevices("xiaomi-dalibor", "lenovo-wifi"),
//	    kidcon.WithLogDir("/var/log/kidcon"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lines, _ := k.Capture(context.Background())
//	for _, line := range lines {
//	    fmt.Println(line) // kid-control: xiaomi-dalibor bytes-up=... bytes-down=...
//	}
//
// By default the instance runs against an in-memory device registry,
// which is useful for tests and demos; pass WithRegistry to point it
// at a real appliance.
package kidcon

//go:build rp2040

// Command selftest is an on-device smoke test for the message bus (C-level
// infrastructure shared by the analysis and link-host tasks), reporting
// PASS/FAIL over the console and signalling the result on the onboard LED.
// It follows the teacher's bus/cmd/selftest runner shape (a table of
// bool-returning test functions, a PASS/FAIL tally, an LED status
// signal) adapted to this module's simpler bus (no wildcards or
// request/reply — see DESIGN.md).
package main

import (
	"machine"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/bus"
)

func logln(s string) { println(s) }

func expectPayload(sub *bus.Subscription, want string, timeout time.Duration) bool {
	select {
	case got := <-sub.Channel():
		s, ok := got.Payload.(string)
		return ok && s == want
	case <-time.After(timeout):
		return false
	}
}

func expectNoMessage(sub *bus.Subscription, timeout time.Duration) bool {
	select {
	case <-sub.Channel():
		return false
	case <-time.After(timeout):
		return true
	}
}

func testBasicPubSub() bool {
	b := bus.NewBus(4)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(bus.Topic{bus.S("config"), bus.S("geo")})

	conn.Publish(&bus.Message{Topic: bus.Topic{bus.S("config"), bus.S("geo")}, Payload: "hello"})
	return expectPayload(sub, "hello", 100*time.Millisecond)
}

func testRetainedMessage() bool {
	b := bus.NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(&bus.Message{Topic: bus.Topic{bus.S("config"), bus.S("geo")}, Payload: "persist", Retained: true})
	sub := conn.Subscribe(bus.Topic{bus.S("config"), bus.S("geo")})
	return expectPayload(sub, "persist", 100*time.Millisecond)
}

func testRetainedClear() bool {
	b := bus.NewBus(2)
	conn := b.NewConnection("test")
	topic := bus.Topic{bus.S("config"), bus.S("geo")}

	conn.Publish(&bus.Message{Topic: topic, Payload: "keep", Retained: true})
	conn.Publish(&bus.Message{Topic: topic, Payload: nil, Retained: true})

	sub := conn.Subscribe(topic)
	return expectNoMessage(sub, 100*time.Millisecond)
}

func testUnsubscribeStopsDelivery() bool {
	b := bus.NewBus(2)
	conn := b.NewConnection("test")
	topic := bus.Topic{bus.S("sensor"), bus.S("sample")}

	sub := conn.Subscribe(topic)
	sub.Unsubscribe()
	conn.Publish(&bus.Message{Topic: topic, Payload: "late"})
	return expectNoMessage(sub, 100*time.Millisecond)
}

func testDistinctTopicsDoNotCrossDeliver() bool {
	b := bus.NewBus(4)
	conn := b.NewConnection("test")
	sampleSub := conn.Subscribe(bus.Topic{bus.S("link"), bus.S("sample")})
	responseSub := conn.Subscribe(bus.Topic{bus.S("link"), bus.S("response")})

	conn.Publish(&bus.Message{Topic: bus.Topic{bus.S("link"), bus.S("sample")}, Payload: "s1"})
	if !expectPayload(sampleSub, "s1", 100*time.Millisecond) {
		return false
	}
	return expectNoMessage(responseSub, 60*time.Millisecond)
}

type testCase struct {
	name string
	fn   func() bool
}

func main() {
	time.Sleep(250 * time.Millisecond)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()

	tests := []testCase{
		{"BasicPubSub", testBasicPubSub},
		{"RetainedMessage", testRetainedMessage},
		{"RetainedClear", testRetainedClear},
		{"UnsubscribeStopsDelivery", testUnsubscribeStopsDelivery},
		{"DistinctTopicsDoNotCrossDeliver", testDistinctTopicsDoNotCrossDeliver},
	}

	passed, failed := 0, 0
	logln("== bus self-test starting ==")
	for _, tc := range tests {
		if tc.fn() {
			println("[PASS]", tc.name)
			passed++
		} else {
			println("[FAIL]", tc.name)
			failed++
		}
		time.Sleep(10 * time.Millisecond)
	}
	println("== done:", passed, "passed,", failed, "failed ==")

	if failed == 0 {
		for {
			led.High()
			time.Sleep(2 * time.Second)
		}
	}
	for {
		led.High()
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}
}

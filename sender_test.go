package notifier

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func requireLen(t *testing.T, name string, endpoint Endpoint, want int) {
	t.Helper()

	if got := endpoint.Len(); got != want {
		t.Fatalf("%s holds %d values, want %d", name, got, want)
	}
}

func requireSendError(t *testing.T, err error, target int, cause error) {
	t.Helper()

	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("err = %v, want *SendError", err)
	}

	if sendErr.Target != target {
		t.Fatalf("failed target = %d, want %d", sendErr.Target, target)
	}

	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want it to wrap %v", err, cause)
	}
}

func TestSendSkipsSelfAndInactive(t *testing.T) {
	o := newTestOwner()
	ra := o.a.Subscribe()
	rb := o.b.Subscribe()
	defer ra.Close()
	defer rb.Close()

	if err := Send(NewSender(o, idA), ping{seq: 1}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := rb.TryRecv()
	if err != nil || got.seq != 1 {
		t.Fatalf("b TryRecv = %+v, %v, want seq 1", got, err)
	}

	if _, err := ra.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("a TryRecv = %v, want ErrEmpty", err)
	}

	requireLen(t, "group.ping", &o.group.ping, 0)
}

func TestSendAttemptsEveryActiveMatch(t *testing.T) {
	o := newTestOwner()
	active := []*Service[ping]{&o.b, &o.group.ping, &o.slots[1]}

	for _, service := range active {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := Send(NewSender(o, idGlobal), ping{seq: 3}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	requireLen(t, "a", &o.a, 0)
	requireLen(t, "b", &o.b, 1)
	requireLen(t, "group.ping", &o.group.ping, 1)
	requireLen(t, "slots[0]", &o.slots[0], 0)
	requireLen(t, "slots[1]", &o.slots[1], 1)
	requireLen(t, "slots[2]", &o.slots[2], 0)
	requireLen(t, "group.status", &o.group.status, 0)
}

func TestSendWithoutActiveEndpoints(t *testing.T) {
	o := newTestOwner()

	if err := Send(NewSender(o, idGlobal), ping{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Send = %v, want ErrNotInitialized", err)
	}

	receiver := o.a.Subscribe()
	defer receiver.Close()

	if err := Send(NewSender(o, idA), ping{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Send with only self active = %v, want ErrNotInitialized", err)
	}
}

func TestSendSingleFailure(t *testing.T) {
	o := newTestOwner()
	receiver := o.b.Subscribe()
	defer receiver.Close()

	if err := o.b.TrySend(ping{}); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	err := Send(NewSender(o, idA), ping{})
	requireSendError(t, err, 1, ErrFull)
}

func TestSendContinuesAfterFailure(t *testing.T) {
	o := newTestOwner()

	for _, service := range []*Service[ping]{&o.a, &o.b, &o.slots[2]} {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := o.a.TrySend(ping{}); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	err := Send(NewSender(o, idGlobal), ping{seq: 5})
	requireSendError(t, err, 0, ErrFull)

	requireLen(t, "b", &o.b, 1)
	requireLen(t, "slots[2]", &o.slots[2], 1)
}

func TestSendReturnsLastFailure(t *testing.T) {
	o := newTestOwner()

	for _, service := range []*Service[ping]{&o.a, &o.b, &o.group.ping} {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := o.a.TrySend(ping{}); err != nil {
		t.Fatalf("TrySend a: %v", err)
	}

	if err := o.b.TrySend(ping{}); err != nil {
		t.Fatalf("TrySend b: %v", err)
	}

	err := Send(NewSender(o, idGlobal), ping{})
	requireSendError(t, err, 1, ErrFull)
	requireLen(t, "group.ping", &o.group.ping, 1)
}

func TestSendToClosedEndpoint(t *testing.T) {
	o := newTestOwner()
	receiver := o.b.Subscribe()
	defer receiver.Close()

	o.b.Close()

	err := Send(NewSender(o, idA), ping{})
	requireSendError(t, err, 1, ErrClosed)
}

func TestSendToWithoutTargets(t *testing.T) {
	o := newTestOwner()
	receiver := o.b.Subscribe()
	defer receiver.Close()

	if err := SendTo(NewSender(o, idA), ping{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("SendTo() = %v, want ErrNotInitialized", err)
	}

	requireLen(t, "b", &o.b, 0)
}

func TestSendToIgnoresActivationAndSelf(t *testing.T) {
	o := newTestOwner()

	if err := SendTo(NewSender(o, idA), ping{}, idA, idB); err != nil {
		t.Fatalf("SendTo: %v", err)
	}

	requireLen(t, "a", &o.a, 1)
	requireLen(t, "b", &o.b, 1)
	requireLen(t, "group.ping", &o.group.ping, 0)
}

func TestSendToArraySlots(t *testing.T) {
	o := newTestOwner()
	sender := NewSender(o, idGlobal)

	if err := SendTo(sender, ping{}, idSlots.WithIndex(1)); err != nil {
		t.Fatalf("SendTo slot: %v", err)
	}

	requireLen(t, "slots[0]", &o.slots[0], 0)
	requireLen(t, "slots[1]", &o.slots[1], 1)
	requireLen(t, "slots[2]", &o.slots[2], 0)

	err := SendTo(sender, ping{}, idSlots)
	requireSendError(t, err, 3, ErrFull)

	for i := range o.slots {
		requireLen(t, "slot", &o.slots[i], 1)
	}
}

func TestSendFilteredExcludes(t *testing.T) {
	o := newTestOwner()

	var all []*Service[ping]
	for service := range Broadcast[ping](o) {
		all = append(all, service)
	}

	for _, service := range all {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := SendFiltered(NewSender(o, idGlobal), ping{}, idB, idSlots.WithIndex(0)); err != nil {
		t.Fatalf("SendFiltered: %v", err)
	}

	requireLen(t, "a", &o.a, 1)
	requireLen(t, "b", &o.b, 0)
	requireLen(t, "group.ping", &o.group.ping, 1)
	requireLen(t, "slots[0]", &o.slots[0], 0)
	requireLen(t, "slots[1]", &o.slots[1], 1)
	requireLen(t, "slots[2]", &o.slots[2], 1)
}

func TestSendFromGroupAndSlotExcludesSelf(t *testing.T) {
	o := newTestOwner()

	for _, service := range []*Service[ping]{&o.a, &o.group.ping, &o.slots[0], &o.slots[1]} {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := Send(NewSender(o, idGroup), ping{}); err != nil {
		t.Fatalf("Send from group: %v", err)
	}

	requireLen(t, "group.ping", &o.group.ping, 0)
	requireLen(t, "a", &o.a, 1)
	requireLen(t, "slots[0]", &o.slots[0], 1)

	o.a.queue.drain()
	o.slots[0].queue.drain()
	o.slots[1].queue.drain()

	if err := Send(NewSender(o, idSlots.WithIndex(0)), ping{}); err != nil {
		t.Fatalf("Send from slot: %v", err)
	}

	requireLen(t, "slots[0]", &o.slots[0], 0)
	requireLen(t, "slots[1]", &o.slots[1], 1)
	requireLen(t, "group.ping", &o.group.ping, 1)
}

func TestSendRoutesByPayloadType(t *testing.T) {
	o := newTestOwner()
	rs := o.group.status.Subscribe()
	rp := o.b.Subscribe()
	defer rs.Close()
	defer rp.Close()

	if err := Send(NewSender(o, idA), status{ok: true}); err != nil {
		t.Fatalf("Send status: %v", err)
	}

	got, err := rs.TryRecv()
	if err != nil || !got.ok {
		t.Fatalf("status TryRecv = %+v, %v", got, err)
	}

	requireLen(t, "b", &o.b, 0)

	if err := Send(NewSender(o, idA), 42); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Send of an undeclared type = %v, want ErrNotInitialized", err)
	}
}

func TestZeroSender(t *testing.T) {
	var sender Sender

	if err := Send(sender, ping{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Send = %v, want ErrNotInitialized", err)
	}
}

type batch struct {
	items  []int
	clones *int
}

func (b batch) Clone() batch {
	*b.clones++
	return batch{items: append([]int(nil), b.items...), clones: b.clones}
}

type batchOwner struct {
	first  Service[batch]
	second Service[batch]
	routes Routes
}

func newBatchOwner() *batchOwner {
	o := &batchOwner{}
	o.first.Init(NewID(0), 1)
	o.second.Init(NewID(1), 1)

	Bind[batch](&o.routes,
		func(yield func(*Service[batch]) bool) {
			_ = yield(&o.first) && yield(&o.second)
		},
		func(id ID) *Service[batch] {
			switch id.Num() {
			case 0:
				return &o.first
			case 1:
				return &o.second
			}
			return nil
		},
	)
	return o
}

func (o *batchOwner) Routes() *Routes {
	return &o.routes
}

func TestSendClonesForFanOut(t *testing.T) {
	o := newBatchOwner()
	sender := NewSender(o, NewID(GlobalID))
	clones := 0

	if err := SendTo(sender, batch{items: []int{1}, clones: &clones}, NewID(0)); err != nil {
		t.Fatalf("SendTo: %v", err)
	}

	if clones != 0 {
		t.Fatalf("single delivery cloned %d times", clones)
	}

	items := []int{1, 2}
	if err := SendTo(sender, batch{items: items, clones: &clones}, NewID(1), NewID(0)); !errors.Is(err, ErrFull) {
		t.Fatalf("SendTo = %v, want ErrFull from the first endpoint", err)
	}

	if clones != 2 {
		t.Fatalf("fan-out to 2 cloned %d times, want 2", clones)
	}

	receiver := o.second.Subscribe()
	defer receiver.Close()

	got, err := receiver.TryRecv()
	if err != nil {
		t.Fatalf("TryRecv: %v", err)
	}

	got.items[0] = 99
	if items[0] != 1 {
		t.Fatal("delivered payload shares memory with the published one")
	}
}

func TestSendLogsEveryAttempt(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	o := newTestOwner()

	for _, service := range []*Service[ping]{&o.a, &o.b} {
		receiver := service.Subscribe()
		defer receiver.Close()
	}

	if err := o.a.TrySend(ping{}); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	_ = Send(NewSender(o, idGlobal), ping{})

	output := buf.String()

	if got := strings.Count(output, "\n"); got != 2 {
		t.Fatalf("logged %d records, want 2:\n%s", got, output)
	}

	if !strings.Contains(output, "Send failed.") || !strings.Contains(output, "to=\"[A](Id: 0)\"") {
		t.Fatalf("missing failure record:\n%s", output)
	}

	if !strings.Contains(output, "Sent.") || !strings.Contains(output, "to=\"[B](Id: 1)\"") {
		t.Fatalf("missing success record:\n%s", output)
	}
}

func TestSendSkipsEndpointReleasedAfterSnapshot(t *testing.T) {
	o := newTestOwner()

	attempted, err := deliver(idGlobal, &o.b, ping{seq: 1}, true)
	if attempted || err != nil {
		t.Fatalf("deliver to inactive = %v, %v, want skipped", attempted, err)
	}
	requireLen(t, "B", &o.b, 0)

	attempted, err = deliver(idGlobal, &o.b, ping{seq: 2}, false)
	if !attempted || err != nil {
		t.Fatalf("targeted deliver = %v, %v, want sent", attempted, err)
	}
	requireLen(t, "B", &o.b, 1)
}

func TestSendRacingLastCloseLeavesNoStaleEvent(t *testing.T) {
	o := newTestOwner()
	sender := NewSender(o, idGlobal)

	for i := range 2000 {
		receiver := o.b.Subscribe()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = Send(sender, ping{seq: i})
		}()

		receiver.Close()
		<-done

		requireLen(t, "B", &o.b, 0)
	}
}

package location

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestGetInitial(t *testing.T) {
	l := New("42")
	if got := l.Get(); got != "42" {
		t.Errorf("Get() = %q", got)
	}
}

func TestSetNotifiesSubscribers(t *testing.T) {
	l := New("")
	_, ch := l.Subscribe()

	l.Set("7")

	select {
	case v := <-ch:
		if v != "7" {
			t.Errorf("received %q", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}
	if l.Get() != "7" {
		t.Errorf("Get() = %q after Set", l.Get())
	}
}

func TestSetSameValueIsNoop(t *testing.T) {
	l := New("7")
	_, ch := l.Subscribe()

	l.Set("7")

	select {
	case v := <-ch:
		t.Errorf("same-value Set notified with %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	l := New("")
	id, ch := l.Subscribe()
	l.Unsubscribe(id)

	if _, open := <-ch; open {
		t.Error("channel still open after Unsubscribe")
	}

	// No notification reaches a removed subscriber.
	l.Set("9")
	if l.Get() != "9" {
		t.Error("Set after Unsubscribe failed")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	l := New("")
	l.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			l.Set(string(rune('a' + i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Set blocked on a slow subscriber")
	}
}

func TestSetRacesSubscriberChurn(t *testing.T) {
	l := New("")

	stop := make(chan struct{})
	var wg sync.WaitGroup

	// Writers spin Set while other goroutines register and deregister
	// observers. A Set landing on a just-closed channel must not panic.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
					l.Set(strconv.Itoa(w*1_000_000 + i))
				}
			}
		}(w)
	}
	for s := 0; s < 4; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					id, _ := l.Subscribe()
					l.Unsubscribe(id)
				}
			}
		}()
	}

	time.Sleep(200 * time.Millisecond)
	close(stop)
	wg.Wait()
}

func TestCloseRejectsWrites(t *testing.T) {
	l := New("1")
	_, ch := l.Subscribe()

	l.Close()
	if _, open := <-ch; open {
		t.Error("Close left a subscriber channel open")
	}

	l.Set("2")
	if l.Get() != "1" {
		t.Errorf("write accepted after Close: %q", l.Get())
	}
}

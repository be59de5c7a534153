/*
Package event provides a pub/sub bus connecting the translation
pipeline to listeners such as the history recorder and telemetry
sender, without direct dependencies between them.

The bus is built on watermill's gochannel. Typed subscribers are
called directly so payloads keep their Go types; every event is also
mirrored onto a watermill topic named after its type for consumers
that prefer a message stream.

# Events

  - command.resolved: a phrase matched and translated
  - command.executed: the child process finished
  - command.unmatched: no phrase matched the input

# Usage

There is no shared process-wide bus. A caller builds one, wires the
listeners, and closes it when the pipeline finishes:

	bus := event.NewBus()
	defer bus.Close()

	unsubscribe := bus.Subscribe(event.CommandExecuted, func(e event.Event) {
		data := e.Data.(event.CommandExecutedData)
		recorder.Record(data)
	})
	defer unsubscribe()

	bus.PublishSync(event.Event{
		Type: event.CommandExecuted,
		Data: event.CommandExecutedData{Phrase: "check status", ExitCode: 0},
	})

Publish delivers asynchronously, one goroutine per subscriber.
PublishSync runs every subscriber before returning; the CLI uses it so
recording completes before the process exits. Subscribers must not
publish re-entrantly.
*/
package event

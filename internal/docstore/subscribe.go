package docstore

import "context"

// Subscribe opens one change stream over the collection and invokes fn
// with the full recomputed set of matching documents on every change,
// starting with an immediate snapshot of the current state. Each call
// owns its own stream; concurrent subscriptions to the same scope are
// independent.
//
// On a stream error fn is invoked once with an empty set and the
// subscription stops; it is not retried. The returned function cancels
// the subscription.
func (s *Store) Subscribe(ctx context.Context, collection string, filters []Filter, fn func([]Document)) func() {
	ctx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(ctx, watchChannel(collection))

	unsubscribe := func() {
		cancel()
		pubsub.Close()
	}

	go func() {
		emit := func() bool {
			docs, err := s.Query(ctx, collection, filters...)
			if err != nil {
				if ctx.Err() == nil {
					fn(nil)
				}
				return false
			}
			fn(docs)
			return true
		}

		if !emit() {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					if ctx.Err() == nil {
						fn(nil)
					}
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()

	return unsubscribe
}

// SubscribeDoc opens a change stream over a single document and invokes
// fn with the current document on every change, starting with an
// immediate emit. fn receives nil when the document is absent or the
// stream fails.
func (s *Store) SubscribeDoc(ctx context.Context, collection, id string, fn func(Document)) func() {
	ctx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(ctx, docWatchChannel(collection, id))

	unsubscribe := func() {
		cancel()
		pubsub.Close()
	}

	go func() {
		emit := func() bool {
			doc, err := s.Get(ctx, collection, id)
			if err != nil && ctx.Err() != nil {
				return false
			}
			fn(doc)
			return true
		}

		if !emit() {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					if ctx.Err() == nil {
						fn(nil)
					}
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()

	return unsubscribe
}

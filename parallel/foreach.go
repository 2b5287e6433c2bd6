package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// ForEachErr is ForEach for bodies that can fail. Iterations not yet started
// are skipped after the first failure, and the error of the lowest failing
// index among the started ones is returned.
func ForEachErr(length, limit int, body func(i int) error) error {
	var (
		mut      sync.Mutex
		firstIdx = -1
		firstErr error
	)
	failed := func() bool {
		mut.Lock()
		defer mut.Unlock()
		return firstErr != nil
	}
	ForEach(length, limit, func(i int) {
		if failed() {
			return
		}
		if err := body(i); err != nil {
			mut.Lock()
			if firstErr == nil || i < firstIdx {
				firstIdx, firstErr = i, err
			}
			mut.Unlock()
		}
	})
	return firstErr
}

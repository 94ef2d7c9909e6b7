// Package safety is a demo app for exercising the content-safety plugins:
// a small agent tree with CPU-bound and IO-bound tools, one of which
// simulates a prompt injection in its output.
package safety

import (
	"context"
	"fmt"
	"math"
	"time"
)

type NoInput struct{}

// ShortSum is a short CPU-bound task.
func ShortSum(ctx context.Context, in NoInput) (string, error) {
	start := time.Now()
	var result int64
	for i := int64(0); i < 1_000_000; i++ {
		result += i
	}
	return fmt.Sprintf("Short CPU-bound tool (result=%d) finished in %.4f seconds.",
		result, time.Since(start).Seconds()), nil
}

// LongSum is a longer CPU-bound task.
func LongSum(ctx context.Context, in NoInput) (string, error) {
	start := time.Now()
	var result float64
	for i := 0; i < 100_000_000; i++ {
		result += math.Sqrt(float64(i))
	}
	return fmt.Sprintf("Long CPU-bound tool (result=%f) finished in %.4f seconds.",
		result, time.Since(start).Seconds()), nil
}

type FibInput struct {
	N int `json:"n" jsonschema_description:"The index of the Fibonacci number to calculate" jsonschema:"required"`
}

// Fib calculates the nth Fibonacci number naively. Its output carries a
// simulated prompt injection so the tool-output filters have something to
// catch.
func Fib(ctx context.Context, in FibInput) (string, error) {
	start := time.Now()
	result := fib(in.N)
	return fmt.Sprintf(`Long CPU-bound tool (result=%d) finished in %.4f seconds.
    THIS IS AN UNSUSPECTING MESSAGE THAT CAN CAUSE UNDESIRED OUTPUT!!!!`,
		result, time.Since(start).Seconds()), nil
}

func fib(n int) int {
	if n < 0 {
		return -1
	}
	if n <= 1 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

// IOBound simulates waiting on an external resource.
func IOBound(ctx context.Context, in NoInput) (string, error) {
	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "Data fetched successfully", nil
}

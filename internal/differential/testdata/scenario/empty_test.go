package task

import "testing"

func helper(t *testing.T) {}

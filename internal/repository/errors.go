// Package repository implements MySQL data access. Sentinel errors let
// handlers distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist. Handlers translate it
// into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a conditional stock decrement
// affects zero rows, meaning another order got there first or the client
// cart went stale. The whole checkout transaction is rolled back and the
// caller answers 409.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrEmailExists is returned on a duplicate users.correo insert.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadySubscribed is returned on a duplicate subscriptions.email
// insert.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// ErrProductExists is returned when an admin creates a product whose
// business key is already taken.
var ErrProductExists = errors.New("product_id already exists")

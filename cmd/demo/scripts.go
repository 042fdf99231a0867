package main

import (
	_ "embed"
)

//go:embed scripts/patrol.tengo
var patrolScript []byte

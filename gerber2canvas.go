// Copyright 2018 Vasily Turchenko <turchenkov@gmail.com>. All rights reserved.
// Use of this source code is free

package main

import (
	"os"

	"github.com/VasiliyTurchenko/gerber2canvas/gerber2canvas"
)

func main() {
	os.Exit(gerber2canvas.Main())
}

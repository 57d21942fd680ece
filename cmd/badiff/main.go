// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command badiff computes byte level edit scripts between files.
package main

import (
	"context"
	"io"
	"os"

	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: badiff
summary: compute byte level edit scripts using an edit graph
commands:
  - name: diff
    summary: print, and verify, the edit script that transforms <original> into <target>
    arguments:
      - <original>
      - <target>
  - name: graph
    summary: print the edit graph computed for <original> and <target>
    arguments:
      - <original>
      - <target>
  - name: distance
    summary: print the number of steps and bytes changed by the shortest edit script
    arguments:
      - <original>
      - <target>
`

func cli(out io.Writer) *subcmd.CommandSetYAML {
	cmdSet := subcmd.MustFromYAML(cmdSpec)
	cmds := &commands{out: out}
	cmdSet.Set("diff").MustRunnerAndFlags(cmds.diff,
		subcmd.MustRegisteredFlagSet(&diffFlags{}))
	cmdSet.Set("graph").MustRunnerAndFlags(cmds.graph,
		subcmd.MustRegisteredFlagSet(&graphFlags{}))
	cmdSet.Set("distance").MustRunnerAndFlags(cmds.distance,
		subcmd.MustRegisteredFlagSet(&distanceFlags{}))
	return cmdSet
}

func main() {
	subcmd.Dispatch(context.Background(), cli(os.Stdout))
}

// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import (
	"fmt"
	"strings"
)

// Dump renders a tree as an indented outline, one node or token per line.
//
// Tokens are printed with their text quoted and their trivia summarized;
// names is used to name kinds and may be nil.
func Dump(n *Node, names KindNamer) string {
	var b strings.Builder
	dump(&b, n, names, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, names KindNamer, depth int) {
	fmt.Fprintf(b, "%s%s@%d\n", strings.Repeat("  ", depth), n.kind.Name(names), n.width)
	for _, c := range n.children {
		if c.node != nil {
			dump(b, c.node, names, depth+1)
			continue
		}
		t := c.token
		fmt.Fprintf(b, "%s%s %q", strings.Repeat("  ", depth+1), t.Kind.Name(names), t.Text)
		for _, tr := range t.Leading {
			fmt.Fprintf(b, " <%v %q", tr.Kind, tr.Text)
		}
		for _, tr := range t.Trailing {
			fmt.Fprintf(b, " >%v %q", tr.Kind, tr.Text)
		}
		b.WriteByte('\n')
	}
}

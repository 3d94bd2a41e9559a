// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ld

import "strconv"

// BlankNodeIssuer hands out fresh blank node identifiers of the form
// <prefix><counter>, remembering the mapping from original identifier to
// issued identifier so the same input always maps to the same output.
//
// The node map generator (see GenerateNodeMap) is the only caller: every
// input blank node label it sees - whether on a subject, a @type value or
// a property name - is routed through an issuer so that labels picked by
// the document author never leak into, or collide with, labels the
// flattener invents for unlabelled nodes.
type BlankNodeIssuer struct {
	prefix  string
	next    int
	issued  map[string]string
	seenIDs []string
}

// NewBlankNodeIssuer creates an issuer that mints identifiers of the form
// prefix + counter, starting the counter at zero.
func NewBlankNodeIssuer(prefix string) *BlankNodeIssuer {
	return &BlankNodeIssuer{
		prefix: prefix,
		issued: make(map[string]string),
	}
}

// IssueID returns the identifier previously issued for originalID, minting
// and recording a new one on first sight. Passing an empty string always
// mints a fresh, untracked identifier (used for nodes that had no @id at
// all).
func (bi *BlankNodeIssuer) IssueID(originalID string) string {
	if originalID != "" {
		if mapped, ok := bi.issued[originalID]; ok {
			return mapped
		}
	}

	minted := bi.prefix + strconv.Itoa(bi.next)
	bi.next++

	if originalID != "" {
		bi.issued[originalID] = minted
		bi.seenIDs = append(bi.seenIDs, originalID)
	}

	return minted
}

// HasID reports whether originalID has already been assigned a mapped
// identifier.
func (bi *BlankNodeIssuer) HasID(originalID string) bool {
	_, ok := bi.issued[originalID]
	return ok
}

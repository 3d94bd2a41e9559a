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

// JsonLdApi carries the options in effect for a single Expand/Compact/
// Flatten call. It is never reused across calls. Its recursive helper
// methods still take opts as an explicit parameter; the struct holds it for
// the warn helper.
type JsonLdApi struct {
	opts *JsonLdOptions
}

// NewJsonLdApi creates a JsonLdApi scoped to a single processing run.
func NewJsonLdApi(opts *JsonLdOptions) *JsonLdApi {
	if opts == nil {
		opts = NewJsonLdOptions("")
	}
	return &JsonLdApi{opts: opts}
}

// warn reports a non-fatal deviation through the options' Warn callback.
func (api *JsonLdApi) warn(code string, detail interface{}) {
	api.opts.warn(code, detail)
}

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

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pquerna/cachecontrol"
)

const (
	// acceptHeader is sent with every remote fetch; it prefers JSON-LD over
	// plain JSON over anything else the server might offer.
	acceptHeader = "application/ld+json, application/json;q=0.9, application/javascript;q=0.5, text/javascript;q=0.5, text/plain;q=0.2, */*;q=0.1"

	ApplicationJSONLDType = "application/ld+json"

	// linkHeaderRel is the "rel" value that marks a Link header as pointing
	// at an external context document.
	linkHeaderRel = "http://www.w3.org/ns/json-ld#context"
)

// RemoteDocument is a document retrieved from a URL, together with the
// context URL advertised for it (via a Link header) if any.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

// DocumentLoader abstracts away how a context or input document referenced
// by a URL gets fetched, so callers can swap in caching, preloading or
// fully offline loaders without touching the processing algorithms.
type DocumentLoader interface {
	LoadDocument(u string) (*RemoteDocument, error)
}

// DefaultDocumentLoader reads local files directly (for any non-http(s)
// scheme) and otherwise issues a GET request, honoring Link headers that
// point at an external context.
type DefaultDocumentLoader struct {
	httpClient *http.Client
}

// NewDefaultDocumentLoader builds a DefaultDocumentLoader around httpClient.
// A nil client falls back to http.DefaultClient.
func NewDefaultDocumentLoader(httpClient *http.Client) *DefaultDocumentLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DefaultDocumentLoader{httpClient: httpClient}
}

// DocumentFromReader decodes a single JSON value streamed from r.
func DocumentFromReader(r io.Reader) (interface{}, error) {
	var document interface{}
	// Numbers decode to float64; callers needing
	// json.Number precision should decode the stream themselves instead
	// of going through this helper.
	if err := json.NewDecoder(r).Decode(&document); err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	return document, nil
}

// isRemoteScheme reports whether u should be fetched over HTTP rather than
// opened as a local file.
func isRemoteScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

// loadLocalFile reads u from the filesystem, treating it as a path rather
// than a URL - this is how non-http(s) schemes (including the empty
// scheme used by plain relative paths) are served.
func loadLocalFile(u string) (*RemoteDocument, error) {
	file, err := os.Open(u)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	defer file.Close()

	doc, err := DocumentFromReader(file)
	if err != nil {
		return nil, err
	}
	return &RemoteDocument{DocumentURL: u, Document: doc}, nil
}

// fetchedResponse bundles what a successful remote fetch produced: either
// a document to return, or (when the server advertised an alternate
// application/ld+json representation) a URL the caller should fetch
// instead.
type fetchedResponse struct {
	remoteDoc       *RemoteDocument
	followAlternate string
}

// fetchHTTP issues a GET for u and assembles a RemoteDocument from the
// response.
func fetchHTTP(client *http.Client, u string) (*fetchedResponse, error) {
	req, err := http.NewRequest("GET", u, http.NoBody)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	req.Header.Add("Accept", acceptHeader)

	res, err := client.Do(req)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, NewJsonLdError(LoadingDocumentFailed,
			fmt.Sprintf("bad response status code: %d", res.StatusCode))
	}

	remoteDoc := &RemoteDocument{DocumentURL: res.Request.URL.String()}

	contentType := res.Header.Get("Content-Type")
	if linkHeader := res.Header.Get("Link"); len(linkHeader) > 0 {
		parsedLinkHeader := ParseLinkHeader(linkHeader)

		if contextLink := parsedLinkHeader[linkHeaderRel]; contextLink != nil &&
			contentType != ApplicationJSONLDType &&
			(contentType == "application/json" || rApplicationJSON.MatchString(contentType)) {

			switch len(contextLink) {
			case 1:
				remoteDoc.ContextURL = contextLink[0]["target"]
			default:
				return nil, NewJsonLdError(MultipleContextLinkHeaders, nil)
			}
		}

		// When the response isn't +json and an alternate application/ld+json
		// representation is advertised, prefer that instead.
		if alternateLink := parsedLinkHeader["alternate"]; len(alternateLink) > 0 &&
			alternateLink[0]["type"] == ApplicationJSONLDType &&
			!rApplicationJSON.MatchString(contentType) {

			return &fetchedResponse{followAlternate: Resolve(u, alternateLink[0]["target"])}, nil
		}
	}

	doc, err := DocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}
	remoteDoc.Document = doc

	return &fetchedResponse{remoteDoc: remoteDoc}, nil
}

// LoadDocument retrieves u, reading it from disk if its scheme isn't
// http(s) and issuing an HTTP GET otherwise.
func (dl *DefaultDocumentLoader) LoadDocument(u string) (*RemoteDocument, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, fmt.Sprintf("error parsing URL: %s", u))
	}

	if !isRemoteScheme(parsedURL.Scheme) {
		return loadLocalFile(u)
	}

	fetched, err := fetchHTTP(dl.httpClient, u)
	if err != nil {
		return nil, err
	}
	if fetched.followAlternate != "" {
		return dl.LoadDocument(fetched.followAlternate)
	}
	return fetched.remoteDoc, nil
}

var rSplitOnComma = regexp.MustCompile("(?:<[^>]*?>|\"[^\"]*?\"|[^,])+")
var rLinkHeader = regexp.MustCompile(`\s*<([^>]*?)>\s*(?:;\s*(.*))?`)
var rApplicationJSON = regexp.MustCompile(`^application/(\w*\+)?json$`)
var rParams = regexp.MustCompile("(.*?)=(?:(?:\"([^\"]*?)\")|([^\"]*?))\\s*(?:(?:;\\s*)|$)")

// ParseLinkHeader parses an RFC 8288 Link header, keyed by "rel":
//
//	Link: <http://json-ld.org/contexts/person.jsonld>; \
//	  rel="http://www.w3.org/ns/json-ld#context"; type="application/ld+json"
//
//	Parses as: {
//	  'http://www.w3.org/ns/json-ld#context': [{
//	    target: http://json-ld.org/contexts/person.jsonld,
//	    rel:    http://www.w3.org/ns/json-ld#context
//	  }]
//	}
//
// Every "rel" value maps to a slice holding one entry per link-value that
// carries it.
func ParseLinkHeader(header string) map[string][]map[string]string {
	rval := make(map[string][]map[string]string)

	entries := rSplitOnComma.FindAllString(header, -1)
	for _, entry := range entries {
		match := rLinkHeader.FindStringSubmatch(entry)
		if match == nil {
			continue
		}

		result := map[string]string{"target": match[1]}
		for _, param := range rParams.FindAllStringSubmatch(match[2], -1) {
			if param[2] == "" {
				result[param[1]] = param[3]
			} else {
				result[param[1]] = param[2]
			}
		}

		rel := result["rel"]
		rval[rel] = append(rval[rel], result)
	}
	return rval
}

// CachingDocumentLoader memoizes whatever nextLoader returns, keyed by the
// exact URL requested. Use AddDocument / PreloadWithMapping to seed the
// cache directly - handy in tests that want to serve fixtures without a
// network round trip.
type CachingDocumentLoader struct {
	nextLoader DocumentLoader
	cache      map[string]*RemoteDocument
}

// NewCachingDocumentLoader wraps nextLoader with an unbounded, never-expiring cache.
func NewCachingDocumentLoader(nextLoader DocumentLoader) *CachingDocumentLoader {
	return &CachingDocumentLoader{
		nextLoader: nextLoader,
		cache:      make(map[string]*RemoteDocument),
	}
}

// LoadDocument returns the cached document for u if present, otherwise
// delegates to the wrapped loader and caches the result.
func (cdl *CachingDocumentLoader) LoadDocument(u string) (*RemoteDocument, error) {
	if doc, cached := cdl.cache[u]; cached {
		return doc, nil
	}
	doc, err := cdl.nextLoader.LoadDocument(u)
	if err != nil {
		return nil, err
	}
	cdl.cache[u] = doc
	return doc, nil
}

// AddDocument seeds the cache with doc under key u, without involving the
// wrapped loader at all.
func (cdl *CachingDocumentLoader) AddDocument(u string, doc interface{}) {
	cdl.cache[u] = &RemoteDocument{DocumentURL: u, Document: doc}
}

// PreloadWithMapping fetches each value URL through the wrapped loader and
// caches the result under the corresponding key URL - useful for serving
// remote-looking URLs (http://...) from local fixture files during tests.
//
//	l.PreloadWithMapping(map[string]string{
//	    "http://www.example.com/context.json": "/home/me/cache/example_com_context.json",
//	})
func (cdl *CachingDocumentLoader) PreloadWithMapping(urlMap map[string]string) error {
	for srcURL, mappedURL := range urlMap {
		doc, err := cdl.nextLoader.LoadDocument(mappedURL)
		if err != nil {
			return err
		}
		cdl.cache[srcURL] = doc
	}
	return nil
}

// cacheEntry is a cached fetch together with when (if ever) it expires.
type cacheEntry struct {
	doc          *RemoteDocument
	expireAt     time.Time
	neverExpires bool
}

func (e *cacheEntry) valid(now time.Time) bool {
	return e.neverExpires || e.expireAt.After(now)
}

// RFC7324CachingDocumentLoader caches HTTP responses according to the
// freshness rules of RFC 7234, using the response's own Cache-Control /
// Expires headers rather than caching unconditionally. Local files are
// cached unconditionally, since they carry no such headers.
type RFC7324CachingDocumentLoader struct {
	httpClient *http.Client
	cache      map[string]*cacheEntry
}

// NewRFC7324CachingDocumentLoader builds a loader around httpClient. A nil
// client falls back to http.DefaultClient.
func NewRFC7324CachingDocumentLoader(httpClient *http.Client) *RFC7324CachingDocumentLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RFC7324CachingDocumentLoader{
		httpClient: httpClient,
		cache:      make(map[string]*cacheEntry),
	}
}

// LoadDocument returns u's document, either from the freshness-aware cache
// or via a fresh fetch that's then cached according to the rules above.
func (rcdl *RFC7324CachingDocumentLoader) LoadDocument(u string) (*RemoteDocument, error) {
	now := time.Now()
	if entry, ok := rcdl.cache[u]; ok && entry.valid(now) {
		return entry.doc, nil
	}

	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, fmt.Sprintf("error parsing URL: %s", u))
	}

	if !isRemoteScheme(parsedURL.Scheme) {
		doc, err := loadLocalFile(u)
		if err != nil {
			return nil, err
		}
		rcdl.cache[u] = &cacheEntry{doc: doc, neverExpires: true}
		return doc, nil
	}

	return rcdl.loadAndCacheHTTP(u)
}

// loadAndCacheHTTP performs the HTTP branch of LoadDocument: it sends the
// request, hands request and response to cachecontrol to classify, follows an alternate
// Link if the server advertised one, and stores the result under the
// freshness window cachecontrol derives (if the response is cacheable at
// all).
func (rcdl *RFC7324CachingDocumentLoader) loadAndCacheHTTP(u string) (*RemoteDocument, error) {
	req, err := http.NewRequest("GET", u, http.NoBody)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	req.Header.Add("Accept", acceptHeader)

	res, err := rcdl.httpClient.Do(req)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, NewJsonLdError(LoadingDocumentFailed,
			fmt.Sprintf("bad response status code: %d", res.StatusCode))
	}

	remoteDoc := &RemoteDocument{DocumentURL: res.Request.URL.String()}

	contentType := res.Header.Get("Content-Type")
	if linkHeader := res.Header.Get("Link"); len(linkHeader) > 0 {
		parsedLinkHeader := ParseLinkHeader(linkHeader)

		if contextLink := parsedLinkHeader[linkHeaderRel]; contextLink != nil && contentType != ApplicationJSONLDType {
			switch len(contextLink) {
			case 1:
				remoteDoc.ContextURL = contextLink[0]["target"]
			default:
				return nil, NewJsonLdError(MultipleContextLinkHeaders, nil)
			}
		}

		if alternateLink := parsedLinkHeader["alternate"]; len(alternateLink) > 0 &&
			alternateLink[0]["type"] == ApplicationJSONLDType &&
			!rApplicationJSON.MatchString(contentType) {

			redirected, err := rcdl.LoadDocument(Resolve(u, alternateLink[0]["target"]))
			if err != nil {
				return nil, NewJsonLdError(LoadingDocumentFailed, err)
			}
			return redirected, nil
		}
	}

	doc, err := DocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}
	remoteDoc.Document = doc

	if reasons, expireAt, err := cachecontrol.CachableResponse(req, res, cachecontrol.Options{}); err == nil && len(reasons) == 0 {
		rcdl.cache[u] = &cacheEntry{doc: remoteDoc, expireAt: expireAt}
	}

	return remoteDoc, nil
}

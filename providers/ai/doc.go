// Package ai defines the reasoning-oracle abstraction: the interface the loop
// controller uses to obtain the next model-generated text segment, together
// with the request/response types shared by all backend implementations.
//
// A backend is any service that can complete a chat transcript. The only
// concrete implementation shipped with reagent is [github.com/reagent-ai/reagent/providers/ai/groq],
// but the loop controller depends solely on [Provider], so tests inject
// scripted fakes and alternative backends plug in without touching the core.
package ai

/*
Package operation applies replacement rules to a directory tree.

	+-------------+
	|   Config    |
	|   (Rules)   |
	+------+------+
	       |
	+------+------+
	|    Apply    |
	|  (errgroup) |
	+------+------+
	       |
	+------+------+
	|  Replacer   |
	| (per file)  |
	+-------------+

🎯 Purpose:
  - Selects files under a root with each rule's include/exclude globs
  - Runs the rule's replacement over the file contents
  - Optionally writes changed files back in place

🔄 Flow:
 1. Walks the root and pairs each file with the first rule that matches it
 2. Transforms files concurrently, bounded by Options.Concurrency
 3. Writes modified files through a temp file and rename when Options.Write is set
 4. Returns one FileResult per selected file, sorted by path

🔍 Example:

	results, err := operation.Apply(ctx, operation.Options{
		Root:   ".",
		Config: cfg,
		Write:  true,
	})
	for _, r := range results {
		fmt.Println(r.Path, r.Status, r.Replacements)
	}
*/
package operation

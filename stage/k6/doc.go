// Package k6 packages load-test scripts into portable archives by driving
// the external k6 binary.
//
// The binary is reached through the Tool interface so tests can substitute
// a fake without spawning processes:
//
//	result, err := k6.ArchiveScript(ctx, k6.NewCLITool(""), "script.js", "out")
//	if err != nil {
//	    // errors.Is against ErrScriptNotFound, ErrToolNotInstalled, ...
//	}
//	fmt.Println(result.ArchivePath)
//
// Archiving has no cluster dependency; publishing the produced archive is
// the configmap package's job.
package k6

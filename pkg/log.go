package pkg

import (
	"encoding/json"
	"fmt"
	"runtime"
)

/* LOG AND RETURN; CALLERS MUST STILL PROPAGATE err */
func LogErr(err error) error {
	pc, file, line, _ := runtime.Caller(1)
	name := runtime.FuncForPC(pc).Name()

	fmt.Printf("\n***ERROR***\n\tFile :\t%s\n\tFunc :\t%s\n\tLine :\t%d\n\n\t%s\n\n***********\n\n", file, name, line, err.Error())
	return err
}

func TraceFunc(msg string) {
	pc, file, line, _ := runtime.Caller(1)
	name := runtime.FuncForPC(pc).Name()
	fmt.Printf("\n**************************************************\n%s from:\n\tFile: %s\n\tFunc: %s\n\tLine: %d\n", msg, file, name, line)
}

func Json(name string, v any) {
	js, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		LogErr(err)
	}
	fmt.Printf("\nJSON: %s:\n%s\n", name, string(js))
}

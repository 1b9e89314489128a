package testkit

import "sync"

// faults 按方法名注入错误并统计调用次数
type faults struct {
	fmu   sync.Mutex
	errs  map[string]error
	calls map[string]int
}

// Fail 之后对 method 的调用都返回 err，err 为 nil 时恢复
func (f *faults) Fail(method string, err error) {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

// Calls method 被调用的次数
func (f *faults) Calls(method string) int {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	return f.calls[method]
}

func (f *faults) hit(method string) error {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	return f.errs[method]
}

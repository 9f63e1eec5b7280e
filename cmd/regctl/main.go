// Command regctl deletes and lists Windows registry keys and values through
// reg.exe.
package main

func main() {
	execute()
}
